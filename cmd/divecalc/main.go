package main

import (
	"github.com/dmorvan/divecalc/internal/app"
	"github.com/dmorvan/divecalc/internal/pkg"
)

func main() {
	pkg.InitLog()
	app.Main()
}
