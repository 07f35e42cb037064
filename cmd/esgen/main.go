// Command esgen reads a small JSON/YAML bundle descriptor and either
// renders it as ECMAScript source text (generate) or evaluates it
// in-process with goja (evaluate).
package main

func main() {
	Execute()
}
