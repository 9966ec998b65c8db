package extract

import (
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

// Competition converts one competitions-index row into a competition and a
// season. The index names countries that never appear with an id anywhere
// else, so the country reference resolves by name against the reconciled
// countries map.
func Competition(doc source.CompetitionDoc, raw json.RawMessage, countries map[string]int) (models.Competition, models.Season, error) {
	competition := models.Competition{
		CompetitionID: doc.CompetitionID,
		Name:          doc.CompetitionName,
		Gender:        doc.CompetitionGender,
		Youth:         doc.CompetitionYouth,
		International: doc.CompetitionInternational,
		SourceData:    raw,
	}

	if doc.CountryName != "" {
		id, err := resolver.Resolve(countries, "countries", doc.CountryName)
		if err != nil {
			return models.Competition{}, models.Season{}, err
		}
		competition.CountryID = &id
	}

	season := models.Season{
		SeasonID:   doc.SeasonID,
		SeasonName: doc.SeasonName,
	}
	return competition, season, nil
}

// CollectCompetitionCountries feeds every country name referenced by the
// competitions index into the collect-phase key set.
func CollectCompetitionCountries(docs []source.CompetitionDoc, keys *resolver.KeySet) {
	for _, doc := range docs {
		keys.Add(doc.CountryName)
	}
}
