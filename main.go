package main

import "github.com/klytics/xlcompare/cmd"

func main() {
	cmd.Execute()
}
