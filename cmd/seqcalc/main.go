package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seqcalc/seqcalc-go/pkg/driver"
)

const cliToolVersion = "seqcalc 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runDemo(stdout, stderr)
	}

	switch args[0] {
	case "--help", "-h":
		printUsage(stderr)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "demo":
		if len(args) > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDemo(stdout, stderr)
	case "fact", "factorial":
		return runJob(driver.OpFactorial, args[1:], stdout, stderr)
	case "fib", "fibonacci":
		return runJob(driver.OpFibonacci, args[1:], stdout, stderr)
	case "run":
		return runRunfile(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func runDemo(stdout, stderr io.Writer) int {
	demo := &driver.Runfile{
		Name: "demo",
		Jobs: []driver.Job{
			{Op: driver.OpFactorial, N: 5},
			{Op: driver.OpFibonacci, N: 10},
		},
	}
	if err := demo.Execute(stdout); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func runJob(op driver.Op, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "seqcalc %s requires an integer argument\n", op)
		return 1
	}
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		fmt.Fprintf(stderr, "seqcalc %s: %q is not an integer\n", op, args[0])
		return 1
	}
	line, err := driver.Job{Op: op, N: n}.Run()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, line)
	return 0
}

func runRunfile(args []string, stdout, stderr io.Writer) int {
	var path string
	switch len(args) {
	case 0:
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(stderr, "failed to determine working directory: %v\n", err)
			return 1
		}
		found, err := driver.FindRunfile(cwd)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		path = found
	case 1:
		path = args[0]
	default:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	runfile, err := driver.LoadRunfile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load runfile: %v\n", err)
		return 1
	}
	if err := runfile.Execute(stdout); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  seqcalc [demo]")
	fmt.Fprintln(w, "  seqcalc fact <n>")
	fmt.Fprintln(w, "  seqcalc fib <n>")
	fmt.Fprintln(w, "  seqcalc run [calc.yml]")
	fmt.Fprintln(w, "  seqcalc --version")
}
