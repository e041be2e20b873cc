package main

import (
	"os"

	"github.com/prasanthlucy/Resume-project-xeedo/app"
)

func main() {
	os.Exit(app.Run())
}
