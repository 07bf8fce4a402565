package main

import "github.com/gazette-dev/gazette/cmd"

// @title        Gazette API
// @version      1.0
// @description  Content publishing backend: accounts, sessions and articles.
// @BasePath     /
func main() {
	cmd.Execute()
}
