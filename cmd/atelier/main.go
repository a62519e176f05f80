package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/caarlos0/env/v11"
	"github.com/clarktrimble/sabot"

	"atelier"
	"atelier/auth"
	"atelier/rest"
	"atelier/util"
)

func main() {

	cfg := atelier.Config{}
	err := env.Parse(&cfg)
	check(err)

	file := util.OpenLog(cfg.LogPath, 0644)
	defer util.CloseLog(file)
	lgr := &sabot.Sabot{Writer: file, MaxLen: 200}

	ctx := context.Background()

	err = util.SampleConfig(atelier.SampleLayout, cfg.LayoutPath, 0644)
	check(err)
	layout, err := atelier.LoadLayout(cfg.LayoutPath)
	check(err)

	clt := rest.NewClient(cfg.BaseURL, cfg.Token)
	caps := auth.NewStatic(cfg.Admin, cfg.Permissions, cfg.Modules)

	lk, err := atelier.LoadLookups(ctx, clt)
	check(err)

	lgr.Info(ctx, "starting console", "base_url", cfg.BaseURL)

	model := atelier.NewModel(ctx, clt, caps, lk, layout, lgr, cfg.PageSize)

	prg := tea.NewProgram(model)
	_, err = prg.Run()
	check(err)
}

func check(err error) {
	if err != nil {
		fmt.Printf("error: %+v\n", err)
		os.Exit(1)
	}
}
