// bal-verify is a one-shot inspection tool for RLP-encoded block access
// lists: it validates canonical ordering, recomputes content hashes, and
// dumps per-account summaries.
package main

func main() {
	Execute()
}
