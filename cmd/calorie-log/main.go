// cmd/calorie-log/main.go
package main

import "calorie-log/internal/cli"

func main() {
	cli.Execute()
}
