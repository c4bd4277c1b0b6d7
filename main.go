package main

import "github.com/geosamples/curator/cmd"

func main() {
	cmd.Execute()
}
