package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"diagnosis_api/pkg/probe"
)

type ProbeServer struct {
	Name          string
	Version       string
	Details       map[string]string
	ListenAddress string
	Ready         probe.ReadinessCheck
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:    p.Name,
			Version: p.Version,
			Details: p.Details,
		},
		p.Ready,
	)

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
