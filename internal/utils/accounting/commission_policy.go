package accounting

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var policyValidator = validator.New()

// ParseCommissionPolicy decodes the JSON document stored on users, ventanas
// and bancas. An empty or null document means no policy.
func ParseCommissionPolicy(raw []byte) (*domain.CommissionPolicy, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var policy domain.CommissionPolicy
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, fmt.Errorf("%w: malformed commission policy: %v", apperrors.ErrValidation, err)
	}
	if err := ValidateCommissionPolicy(&policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

// ValidateCommissionPolicy checks rule shapes and numeric bounds.
func ValidateCommissionPolicy(policy *domain.CommissionPolicy) error {
	if policy == nil {
		return nil
	}
	if err := policyValidator.Struct(policy); err != nil {
		return fmt.Errorf("%w: invalid commission policy: %v", apperrors.ErrValidation, err)
	}
	for i, r := range policy.Rules {
		if r.MultiplierRange.Min.GreaterThan(r.MultiplierRange.Max) {
			return fmt.Errorf("%w: rule %d has min multiplier %s above max %s", apperrors.ErrValidation, i, r.MultiplierRange.Min, r.MultiplierRange.Max)
		}
		if r.Percent.IsNegative() || r.Percent.GreaterThan(hundred) {
			return fmt.Errorf("%w: rule %d percent %s outside [0,100]", apperrors.ErrValidation, i, r.Percent)
		}
	}
	return nil
}

// EncodeCommissionPolicy is the inverse of ParseCommissionPolicy.
func EncodeCommissionPolicy(policy *domain.CommissionPolicy) ([]byte, error) {
	if policy == nil {
		return []byte("null"), nil
	}
	return json.Marshal(policy)
}
