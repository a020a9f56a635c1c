// huekit - A colour palette toolkit
//
// huekit generates harmonious colour palettes and gradients, extracts
// dominant colours from images and grades text contrast.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/huekit/internal/cli"

func main() {
	cli.Execute()
}
