package main

import (
	"github.com/ceibacafe/ordering/internal/app"
	"github.com/ceibacafe/ordering/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
