package customer

import (
	"context"
	"sort"
	"strings"

	"github.com/fieldserve/backend/internal/domain/customer"
)

// SearchService finds existing customers by phone, email, or fuzzy
// name match. It backs both the search endpoint and duplicate
// detection during provisioning.
type SearchService struct {
	customerRepo customer.CustomerRepository
	identity     customer.IdentityProvider
	scoring      customer.Scoring
}

// NewSearchService creates a new SearchService
func NewSearchService(
	customerRepo customer.CustomerRepository,
	identity customer.IdentityProvider,
	scoring customer.Scoring,
) *SearchService {
	return &SearchService{
		customerRepo: customerRepo,
		identity:     identity,
		scoring:      scoring,
	}
}

// Search classifies the term and runs the matching strategy. Terms
// shorter than 2 characters after trimming short-circuit to an empty
// result without touching any collaborator.
func (s *SearchService) Search(ctx context.Context, term string) (*SearchResponse, error) {
	trimmed := strings.TrimSpace(term)
	if len(trimmed) < 2 {
		return &SearchResponse{Mode: string(customer.SearchModeName), Results: []SearchResult{}}, nil
	}

	query := customer.ClassifySearchTerm(trimmed)
	switch query.Mode {
	case customer.SearchModePhone:
		return s.searchByPhone(ctx, query)
	case customer.SearchModeEmail:
		return s.searchByEmail(ctx, query)
	default:
		return s.searchByName(ctx, query)
	}
}

func (s *SearchService) searchByPhone(ctx context.Context, query customer.SearchQuery) (*SearchResponse, error) {
	candidates, err := s.customerRepo.FindByPhoneFragment(ctx, query.Phone)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(candidates))
	for i := range candidates {
		if customer.PhoneMatches(query.Phone, candidates[i].Phone) {
			results = append(results, SearchResult{Customer: NewCustomerResponse(&candidates[i])})
		}
	}
	return &SearchResponse{Mode: string(customer.SearchModePhone), Results: results}, nil
}

func (s *SearchService) searchByEmail(ctx context.Context, query customer.SearchQuery) (*SearchResponse, error) {
	identities, err := s.identity.FindIdentitiesByEmailSubstring(ctx, query.Email)
	if err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return &SearchResponse{Mode: string(customer.SearchModeEmail), Results: []SearchResult{}}, nil
	}

	ids := make([]string, 0, len(identities))
	for _, id := range identities {
		ids = append(ids, id.ID)
	}

	// Only identities with a profile row come back; identity records
	// without one are ignored.
	customers, err := s.customerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(customers))
	for i := range customers {
		results = append(results, SearchResult{Customer: NewCustomerResponse(&customers[i])})
	}
	return &SearchResponse{Mode: string(customer.SearchModeEmail), Results: results}, nil
}

func (s *SearchService) searchByName(ctx context.Context, query customer.SearchQuery) (*SearchResponse, error) {
	candidates, err := s.customerRepo.FindByNameTokens(ctx, query.Tokens)
	if err != nil {
		return nil, err
	}

	matched := make([]customer.Customer, 0, len(candidates))
	for i := range candidates {
		if customer.NameMatches(query.Tokens, customer.NormalizeName(candidates[i].Name)) {
			matched = append(matched, candidates[i])
		}
	}

	// Prefix matches on the whole query sort first, then lexicographic
	// by normalized name.
	sort.SliceStable(matched, func(i, j int) bool {
		ni := customer.NormalizeName(matched[i].Name)
		nj := customer.NormalizeName(matched[j].Name)
		pi := strings.HasPrefix(ni, query.Name)
		pj := strings.HasPrefix(nj, query.Name)
		if pi != pj {
			return pi
		}
		return ni < nj
	})

	// The ordered name search does not carry fuzzy scores; scoring is
	// reserved for the close-match duplicate check.
	results := make([]SearchResult, 0, len(matched))
	for i := range matched {
		results = append(results, SearchResult{Customer: NewCustomerResponse(&matched[i])})
	}
	return &SearchResponse{Mode: string(customer.SearchModeName), Results: results}, nil
}

// CloseMatches returns customers whose names are similar enough to the
// given name to flag as potential duplicates during provisioning
func (s *SearchService) CloseMatches(ctx context.Context, name string) ([]SearchResult, error) {
	normalized := customer.NormalizeName(name)
	if len(normalized) < 2 {
		return []SearchResult{}, nil
	}

	tokens := strings.Fields(normalized)
	candidates, err := s.customerRepo.FindByNameTokens(ctx, tokens[:1])
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0)
	for i := range candidates {
		if s.scoring.IsCloseMatch(normalized, candidates[i].Name) {
			score := s.scoring.Score(normalized, candidates[i].Name)
			results = append(results, SearchResult{
				Customer: NewCustomerResponse(&candidates[i]),
				Score:    &score,
			})
		}
	}
	return results, nil
}
