// Command searchai researches a topic on the web and writes a markdown, PDF,
// or PowerPoint document about it.
//
//	searchai search "history of the transistor" -f pdf
//	searchai history -n 20
//	searchai show <query-id>
//	searchai serve --bind 127.0.0.1:7488
//	searchai check
//	searchai config init
//
// Every run is recorded in the configured SQLite database. Failures print a
// single "Error: <stage>: <detail>" line and exit with status 1.
package main
