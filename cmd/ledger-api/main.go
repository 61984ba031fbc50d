package main

import (
	"fmt"
	"os"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	port := os.Getenv("API_PORT")
	if len(port) == 0 {
		port = "3000"
	}

	r := routes.SetupRouter()
	r.Listen(":" + port)
}
