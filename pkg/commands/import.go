package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/link-services/link-gateway-backend/pkg/dao"
	"github.com/link-services/link-gateway-backend/pkg/db"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// ImportAction bulk-loads domains from a JSON file of DomainRequest
// entries. Domains that already exist are skipped, not treated as
// failures.
func ImportAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: domains import /path/to/domains.json")
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %v: %w", path, err)
	}

	var requests []api.DomainRequest
	if err := json.Unmarshal(contents, &requests); err != nil {
		return fmt.Errorf("could not parse %v: %w", path, err)
	}

	daoReg := dao.GetDaoRegistry(db.DB)
	created := 0
	skipped := 0
	for _, request := range requests {
		_, err := daoReg.Domain.Create(c.Context, request)
		if err != nil {
			var daoError *ce.DaoError
			if errors.As(err, &daoError) && daoError.BadValidation {
				log.Warn().Str("slug", request.Slug).Msgf("Skipping domain: %v", err.Error())
				skipped++
				continue
			}
			return err
		}
		created++
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("Import complete")
	return nil
}
