package extract

import (
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

// MatchRows is everything one match document contributes: the match fact
// plus the dimension rows it mentions (teams, managers, stadium, referee).
// Dimensions are deduplicated downstream by the writer's conflict handling.
type MatchRows struct {
	Match    models.Match
	Teams    []models.Team
	Managers []models.Manager
	Stadium  *models.Stadium
	Referee  *models.Referee
}

// Match converts one match document. Every country reference resolves by
// name through the reconciled countries map, since country ids are locally
// generated surrogates.
func Match(doc source.MatchDoc, raw json.RawMessage, countries map[string]int) (MatchRows, error) {
	rows := MatchRows{
		Match: models.Match{
			MatchID:    doc.MatchID,
			MatchDate:  doc.Date,
			KickOff:    doc.KickOff,
			HomeScore:  doc.HomeScore,
			AwayScore:  doc.AwayScore,
			MatchWeek:  doc.MatchWeek,
			SourceData: raw,
		},
	}

	if doc.Competition != nil {
		rows.Match.CompetitionID = &doc.Competition.CompetitionID
	}
	if doc.Season != nil {
		rows.Match.SeasonID = &doc.Season.SeasonID
	}
	if doc.CompetitionStage != nil {
		rows.Match.CompetitionStage = &doc.CompetitionStage.Name
	}

	if doc.HomeTeam != nil {
		team, err := teamRow(doc.HomeTeam.ID, doc.HomeTeam.Name, doc.HomeTeam.Gender, doc.HomeTeam.Country, countries)
		if err != nil {
			return MatchRows{}, err
		}
		rows.Teams = append(rows.Teams, team)
		rows.Match.HomeTeamID = &doc.HomeTeam.ID

		manager, managerID, err := managerRow(doc.HomeTeam.Managers, countries)
		if err != nil {
			return MatchRows{}, err
		}
		if manager != nil {
			rows.Managers = append(rows.Managers, *manager)
			rows.Match.HomeManagerID = managerID
		}
	}

	if doc.AwayTeam != nil {
		team, err := teamRow(doc.AwayTeam.ID, doc.AwayTeam.Name, doc.AwayTeam.Gender, doc.AwayTeam.Country, countries)
		if err != nil {
			return MatchRows{}, err
		}
		rows.Teams = append(rows.Teams, team)
		rows.Match.AwayTeamID = &doc.AwayTeam.ID

		manager, managerID, err := managerRow(doc.AwayTeam.Managers, countries)
		if err != nil {
			return MatchRows{}, err
		}
		if manager != nil {
			rows.Managers = append(rows.Managers, *manager)
			rows.Match.AwayManagerID = managerID
		}
	}

	if doc.Stadium != nil {
		countryID, err := resolveCountry(doc.Stadium.Country, countries)
		if err != nil {
			return MatchRows{}, err
		}
		rows.Stadium = &models.Stadium{StadiumID: doc.Stadium.ID, Name: doc.Stadium.Name, CountryID: countryID}
		rows.Match.StadiumID = &doc.Stadium.ID
	}

	if doc.Referee != nil {
		countryID, err := resolveCountry(doc.Referee.Country, countries)
		if err != nil {
			return MatchRows{}, err
		}
		rows.Referee = &models.Referee{RefereeID: doc.Referee.ID, Name: doc.Referee.Name, CountryID: countryID}
		rows.Match.RefereeID = &doc.Referee.ID
	}

	return rows, nil
}

// CollectMatchCountries feeds every country name a match document mentions
// into the collect-phase key set.
func CollectMatchCountries(doc source.MatchDoc, keys *resolver.KeySet) {
	if doc.Competition != nil {
		keys.Add(doc.Competition.CountryName)
	}
	if doc.HomeTeam != nil {
		addRefName(doc.HomeTeam.Country, keys)
		for _, manager := range doc.HomeTeam.Managers {
			addRefName(manager.Country, keys)
		}
	}
	if doc.AwayTeam != nil {
		addRefName(doc.AwayTeam.Country, keys)
		for _, manager := range doc.AwayTeam.Managers {
			addRefName(manager.Country, keys)
		}
	}
	if doc.Stadium != nil {
		addRefName(doc.Stadium.Country, keys)
	}
	if doc.Referee != nil {
		addRefName(doc.Referee.Country, keys)
	}
}

func addRefName(ref *source.Ref, keys *resolver.KeySet) {
	if ref != nil {
		keys.Add(ref.Name)
	}
}

func resolveCountry(ref *source.Ref, countries map[string]int) (*int, error) {
	if ref == nil || ref.Name == "" {
		return nil, nil
	}
	id, err := resolver.Resolve(countries, "countries", ref.Name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func teamRow(id int, name string, gender *string, country *source.Ref, countries map[string]int) (models.Team, error) {
	countryID, err := resolveCountry(country, countries)
	if err != nil {
		return models.Team{}, err
	}
	return models.Team{TeamID: id, Name: name, Gender: gender, CountryID: countryID}, nil
}

// managerRow takes the first listed manager; the source occasionally lists
// none, which maps to a nil manager reference on the match.
func managerRow(managers []source.ManagerDoc, countries map[string]int) (*models.Manager, *int, error) {
	if len(managers) == 0 {
		return nil, nil, nil
	}

	doc := managers[0]
	countryID, err := resolveCountry(doc.Country, countries)
	if err != nil {
		return nil, nil, err
	}
	manager := &models.Manager{
		ManagerID:   doc.ID,
		Name:        doc.Name,
		Nickname:    doc.Nickname,
		DateOfBirth: doc.DOB,
		CountryID:   countryID,
	}
	return manager, &doc.ID, nil
}
