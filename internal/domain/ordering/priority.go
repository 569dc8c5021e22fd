package ordering

import (
	"github.com/fieldserve/backend/internal/domain/customer"
)

// Priority bounds for jobs. 1 is the most urgent.
const (
	MinPriority = 1
	MaxPriority = 8
)

// ComputePriority assigns a job priority from the ordering customer's
// classification and the service's category. Rules are evaluated in
// order and the first match wins:
//
//	insurance                 -> 1
//	commercial + adas         -> 2
//	commercial + prog or diag -> 5
//	airbag                    -> 3
//	immo                      -> 4
//	residential + prog        -> 6
//	residential + adas        -> 7
//	residential + diag        -> 8
//	anything else             -> 8
func ComputePriority(classification customer.Classification, category Category) int {
	switch {
	case classification == customer.ClassificationInsurance:
		return 1
	case classification == customer.ClassificationCommercial && category == CategoryADAS:
		return 2
	case classification == customer.ClassificationCommercial && (category == CategoryProg || category == CategoryDiag):
		return 5
	case category == CategoryAirbag:
		return 3
	case category == CategoryImmo:
		return 4
	case classification == customer.ClassificationResidential && category == CategoryProg:
		return 6
	case classification == customer.ClassificationResidential && category == CategoryADAS:
		return 7
	case classification == customer.ClassificationResidential && category == CategoryDiag:
		return 8
	default:
		return 8
	}
}
