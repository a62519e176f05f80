package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/clarktrimble/sabot"

	"atelier/stub"
)

type config struct {
	Port  int    `env:"STUB_PORT" envDefault:"8088"`
	Token string `env:"STUB_TOKEN" envDefault:"letmein"`
}

func main() {

	cfg := config{}
	err := env.Parse(&cfg)
	check(err)

	lgr := &sabot.Sabot{Writer: os.Stdout, MaxLen: 200}
	ctx := context.Background()

	srv := stub.NewServer(cfg.Token, lgr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	lgr.Info(ctx, "stub backend listening", "addr", addr)

	err = http.ListenAndServe(addr, srv.Router())
	check(err)
}

func check(err error) {
	if err != nil {
		fmt.Printf("error: %+v\n", err)
		os.Exit(1)
	}
}
