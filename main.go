// Copyright (c) 2024 cblomart
// Licensed under the MIT License

package main

import "aiwire/cmd"

func main() {
	cmd.Execute()
}
