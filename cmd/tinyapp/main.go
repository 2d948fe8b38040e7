package main

import (
	"log"

	"github.com/anthonyChuks1/tinyapp/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatalln("Unable to initialize the application:", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Fatalln("The application finished with error:", err)
	}
}
