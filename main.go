// Command measure times key/value workloads and reports their cost in time
// and memory.
package main

func main() {
	Execute()
}
