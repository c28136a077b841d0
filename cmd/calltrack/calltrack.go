package main

import "github.com/Egor213/CallTrack/internal/app"

func main() {
	app.Run()
}
