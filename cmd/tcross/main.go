package main

import "tcross/internal/game"

func main() {
	game.RunDesktop()
}
