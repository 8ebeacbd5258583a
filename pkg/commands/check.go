package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func CheckAction(c *cli.Context) error {
	slugs := c.Args().Slice()
	if len(slugs) == 0 {
		return fmt.Errorf("usage: domains check SLUG [SLUG2]...")
	}

	result := newSweeper().CheckDomains(c.Context, slugs)

	for slug, message := range result.Failures {
		log.Warn().Str("slug", slug).Msgf("Verification error: %v", message)
	}
	log.Info().
		Int("checked", result.Checked).
		Int("verified", result.Verified).
		Int("failed", result.Failed).
		Msg("Check complete")
	return nil
}
