package main

import "findahand_backend/internal/app"

func main() {
	app.Run()
}
