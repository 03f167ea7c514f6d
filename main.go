// ContentLens extracts the main content of web pages as text, Markdown or
// HTML, with media records and a keyword/topic analysis.
package main

import "github.com/gaurav-prasanna/contentlens/cmd"

func main() {
	cmd.Execute()
}
