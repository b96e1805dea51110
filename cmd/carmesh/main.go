// Command carmesh runs the automotive query engine: a one-shot query mode
// for the terminal and an HTTP server mode with a live trace feed.
package main

func main() {
	execute()
}
