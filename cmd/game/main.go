// Aspects is a short narrative game played in the terminal: walk the
// garden, combine emotions at the combiner and fill every socket.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
