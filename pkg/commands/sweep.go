// Package commands holds the actions behind the domains admin CLI.
package commands

import (
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/db"
	"github.com/link-services/link-gateway-backend/pkg/event"
	"github.com/link-services/link-gateway-backend/pkg/hosting"
	"github.com/link-services/link-gateway-backend/pkg/lifecycle"
	"github.com/link-services/link-gateway-backend/pkg/verification"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newSweeper() *verification.Sweeper {
	daoReg := dao.GetDaoRegistry(db.DB)
	client := hosting.NewHostingClient()
	producer := event.NewProducer()
	handler := lifecycle.NewHandler(daoReg.Domain, producer)
	return verification.NewSweeper(daoReg, client, handler, nil)
}

func SweepAction(c *cli.Context) error {
	result, err := newSweeper().SweepBatch(c.Context)
	if err != nil {
		return err
	}

	for slug, message := range result.Failures {
		log.Warn().Str("slug", slug).Msgf("Verification error: %v", message)
	}
	log.Info().
		Int("checked", result.Checked).
		Int("verified", result.Verified).
		Int("failed", result.Failed).
		Str("elapsed", result.Elapsed.String()).
		Msg("Sweep complete")
	return nil
}
