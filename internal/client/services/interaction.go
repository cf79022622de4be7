package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/client/openfda"
	"github.com/osetrov/healthkeeper/internal/common"
	"github.com/osetrov/healthkeeper/internal/logging"
)

// maxConcurrentChecks bounds the fan-out against the label API.
const maxConcurrentChecks = 4

// DrugLister supplies the saved drug names a candidate is checked against.
type DrugLister interface {
	SavedDrugNames(ctx context.Context) ([]string, error)
}

// MedicationDrugLister lists the names of the signed-in user's medications.
type MedicationDrugLister struct {
	Meds MedicationService
}

func (l MedicationDrugLister) SavedDrugNames(ctx context.Context) ([]string, error) {
	meds := l.Meds.GetMedications(ctx)
	names := make([]string, 0, len(meds))
	for _, med := range meds {
		names = append(names, med.Name)
	}
	return names, nil
}

// StaticDrugLister serves a fixed name list, for callers that already hold
// one.
type StaticDrugLister []string

func (l StaticDrugLister) SavedDrugNames(context.Context) ([]string, error) {
	return l, nil
}

// InteractionService checks one candidate drug against every saved drug using
// public label data. A failed lookup for one saved drug degrades that single
// result; it never fails the whole check.
type InteractionService interface {
	CheckInteractions(ctx context.Context, newDrugName string) ([]models.InteractionResult, error)
}

type interactionService struct {
	drugs  DrugLister
	labels openfda.LabelSource
	log    logging.Logger
}

// NewInteractionService constructs an InteractionService over the given label
// source.
func NewInteractionService(drugs DrugLister, labels openfda.LabelSource, log logging.Logger) InteractionService {
	if log == nil {
		log = logging.NewNop()
	}
	return &interactionService{drugs: drugs, labels: labels, log: log}
}

// CheckInteractions fans out one label lookup per saved drug, at most
// maxConcurrentChecks in flight. Results come back in saved-list order
// regardless of completion order.
func (s *interactionService) CheckInteractions(ctx context.Context, newDrugName string) ([]models.InteractionResult, error) {
	newDrugName = strings.TrimSpace(newDrugName)
	if newDrugName == "" {
		return nil, fmt.Errorf("%w: drug name is required", common.ErrValidation)
	}

	saved, err := s.drugs.SavedDrugNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing saved drugs: %w", err)
	}
	if len(saved) == 0 {
		return []models.InteractionResult{}, nil
	}

	results := make([]models.InteractionResult, len(saved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, savedDrug := range saved {
		g.Go(func() error {
			results[i] = s.checkOne(gctx, newDrugName, savedDrug)
			return nil
		})
	}
	// The workers only write their own slot and never return an error; Wait
	// is purely a join point.
	_ = g.Wait()

	return results, nil
}

// checkOne queries the saved drug's label and scans it for mentions of the
// candidate. Lookup failures degrade to an advisory result.
func (s *interactionService) checkOne(ctx context.Context, newDrug, savedDrug string) models.InteractionResult {
	resp, err := s.labels.Query(ctx, savedDrug)
	if err != nil {
		if errors.Is(err, common.ErrTransport) {
			s.log.Warn(ctx, "label request failed", "drug", savedDrug, "err", err)
			return models.InteractionResult{
				DrugName:    savedDrug,
				Interaction: models.SeverityNone,
				Details: fmt.Sprintf(
					"Unable to retrieve interaction data for %s. Please consult your healthcare provider.", savedDrug),
			}
		}
		s.log.Error(ctx, "label lookup error", "drug", savedDrug, "err", err)
		return models.InteractionResult{
			DrugName:    savedDrug,
			Interaction: models.SeverityNone,
			Details: fmt.Sprintf(
				"Error retrieving interaction data for %s. Please consult your healthcare provider.", savedDrug),
		}
	}

	if len(resp.Results) == 0 {
		return models.InteractionResult{
			DrugName:    savedDrug,
			Interaction: models.SeverityNone,
			Details: fmt.Sprintf(
				"No interaction data found between %s and %s in FDA database.", newDrug, savedDrug),
		}
	}

	text, found := findMention(resp.Results, newDrug)
	if !found {
		return models.InteractionResult{
			DrugName:    savedDrug,
			Interaction: models.SeverityNone,
			Details: fmt.Sprintf(
				"No known interactions found between %s and %s in FDA database.", newDrug, savedDrug),
		}
	}

	return models.InteractionResult{
		DrugName:    savedDrug,
		Interaction: classifySeverity(text),
		Details:     cleanInteractionText(text, newDrug, savedDrug),
	}
}

// findMention returns the first label fragment mentioning the candidate drug.
// Per document, drug_interactions is scanned before warnings and
// contraindications; the first hit anywhere wins.
func findMention(labels []openfda.LabelResult, newDrug string) (string, bool) {
	needle := strings.ToLower(newDrug)

	for _, label := range labels {
		for _, fragment := range label.DrugInteractions {
			if strings.Contains(strings.ToLower(fragment), needle) {
				return fragment, true
			}
		}
		for _, fragment := range label.Warnings {
			if strings.Contains(strings.ToLower(fragment), needle) {
				return fragment, true
			}
		}
		for _, fragment := range label.Contraindications {
			if strings.Contains(strings.ToLower(fragment), needle) {
				return fragment, true
			}
		}
	}
	return "", false
}
