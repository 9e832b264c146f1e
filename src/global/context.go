package global

import (
	"context"

	"github.com/pinanimate/PinAnimate/src/configure"
)

type Context interface {
	context.Context
	Instances() *Instances
	Config() *configure.Config
}

type GlobalContext struct {
	context.Context
	Insts *Instances
	Cfg   *configure.Config
}

func New(ctx context.Context, config *configure.Config) Context {
	return &GlobalContext{
		Context: ctx,
		Insts:   &Instances{},
		Cfg:     config,
	}
}

func (g *GlobalContext) Instances() *Instances {
	return g.Insts
}

func (g *GlobalContext) Config() *configure.Config {
	return g.Cfg
}
