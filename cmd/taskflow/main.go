package main

import "taskflow-service/cmd"

func main() {
	cmd.Execute()
}
