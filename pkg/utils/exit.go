package utils

import (
	"fmt"
	"io"
	"os"
)

var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

func CheckErrorAndExit(err error, format string, a ...any) {
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", fmt.Sprintf(format, a...), err)
		exit(1)
	}
}
