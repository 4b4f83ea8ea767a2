// Package config parses and validates the YAML input bundle that feeds the
// computation engine: organization salary components (fixed or formula),
// per-employee assigned values, declarations, attendance and regime choice.
// Everything downstream of this package works on already-typed values.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/shopspring/decimal"

	"github.com/vetan/payroll-engine/internal/calculation"
	"github.com/vetan/payroll-engine/internal/domain"
	"github.com/vetan/payroll-engine/internal/formula"
	"github.com/vetan/payroll-engine/internal/regime"
	"github.com/vetan/payroll-engine/pkg/money"
)

// SalaryComponent is one organization-defined pay component. A component
// either carries a formula or takes per-employee assigned values. Reference
// components (a CTC total, a grade multiplier) feed formulas without being
// paid out themselves.
type SalaryComponent struct {
	Code      string `yaml:"code" validate:"required"`
	Name      string `yaml:"name"`
	Formula   string `yaml:"formula,omitempty"`
	Reference bool   `yaml:"reference,omitempty"`
}

// Organization holds the org-wide configuration.
type Organization struct {
	Name             string            `yaml:"name" validate:"required"`
	FinancialYear    string            `yaml:"financial_year" validate:"required"`
	SalaryComponents []SalaryComponent `yaml:"salary_components" validate:"dive"`
}

// EmployeeInput is one employee's bundle: profile, regime choice, assigned
// component values (annual figures), declarations and attendance.
type EmployeeInput struct {
	Profile       domain.TaxpayerProfile     `yaml:"profile"`
	Regime        regime.Variant             `yaml:"regime" validate:"required,oneof=old new"`
	Components    map[string]money.Money     `yaml:"components"`
	Declarations  domain.TaxDeductions       `yaml:"declarations"`
	Perquisites   domain.Perquisites         `yaml:"perquisites"`
	OtherIncome   domain.OtherIncome         `yaml:"other_income"`
	HouseProperty domain.HousePropertyIncome `yaml:"house_property"`
	CapitalGains  domain.CapitalGainsIncome  `yaml:"capital_gains"`
	Retirement    domain.RetirementBenefits  `yaml:"retirement_benefits"`
	Attendance    domain.Attendance          `yaml:"attendance"`
}

// InputBundle is the full YAML document. RegimeTables optionally replaces
// the built-in policy tables per variant; a supplied table is complete,
// not a patch.
type InputBundle struct {
	Organization Organization                     `yaml:"organization"`
	RegimeTables map[regime.Variant]regime.Tables `yaml:"regime_tables,omitempty"`
	PayoutMonth  int                              `yaml:"payout_month" validate:"gte=0,lte=12"`
	PayoutYear   int                              `yaml:"payout_year" validate:"gte=0"`
	Employees    []EmployeeInput                  `yaml:"employees" validate:"min=1,dive"`
}

var componentCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// InputParser loads and validates input bundles.
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// LoadFromFile loads a bundle from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*InputBundle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var bundle InputBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateBundle(&bundle); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &bundle, nil
}

// ValidateBundle runs struct-tag validation followed by the cross-field
// checks the tags cannot express: financial-year shape, component-code
// format, formula validity and the acyclicity of the formula graph.
func (ip *InputParser) ValidateBundle(bundle *InputBundle) error {
	if err := ip.validate.Struct(bundle); err != nil {
		return err
	}
	if err := domain.ValidateFinancialYear(bundle.Organization.FinancialYear); err != nil {
		return err
	}
	if err := ValidateComponents(bundle.Organization.SalaryComponents); err != nil {
		return err
	}
	if _, err := bundle.regimeOverrides(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(bundle.Employees))
	for i := range bundle.Employees {
		emp := &bundle.Employees[i]
		if err := ip.validate.Struct(emp.Profile); err != nil {
			return fmt.Errorf("employee %s: %w", emp.Profile.EmployeeID, err)
		}
		if _, dup := seen[emp.Profile.EmployeeID]; dup {
			return fmt.Errorf("employee %s: duplicate employee id", emp.Profile.EmployeeID)
		}
		seen[emp.Profile.EmployeeID] = struct{}{}
		if err := emp.Attendance.Validate(); err != nil {
			return fmt.Errorf("employee %s: %w", emp.Profile.EmployeeID, err)
		}
		for code := range emp.Components {
			if !componentCodePattern.MatchString(code) {
				return fmt.Errorf("employee %s: invalid component code %q", emp.Profile.EmployeeID, code)
			}
		}
	}
	if bundle.PayoutMonth != 0 && bundle.PayoutYear == 0 {
		return fmt.Errorf("payout_year is required when payout_month is set")
	}
	return nil
}

// ValidateComponents checks component codes and formulas, including cycle
// detection across the full sibling set. This is the save-time contract:
// by the time formulas are evaluated the graph is known acyclic.
func ValidateComponents(components []SalaryComponent) error {
	formulas := make(map[string]string, len(components))
	for _, c := range components {
		if !componentCodePattern.MatchString(c.Code) {
			return fmt.Errorf("component %q: code must be uppercase letters, digits and underscores", c.Code)
		}
		if _, dup := formulas[c.Code]; dup {
			return fmt.Errorf("component %s: duplicate code", c.Code)
		}
		formulas[c.Code] = c.Formula
	}
	for _, c := range components {
		if c.Formula == "" {
			delete(formulas, c.Code)
		}
	}
	for _, c := range components {
		if c.Formula == "" {
			continue
		}
		if err := formula.ValidateFormula(c.Formula); err != nil {
			return fmt.Errorf("component %s: %w", c.Code, err)
		}
		if _, err := formula.DetectCircularDependency(c.Code, c.Formula, formulas); err != nil {
			return fmt.Errorf("component %s: %w", c.Code, err)
		}
	}
	return nil
}

// resolveSalary evaluates the employee's component values, formulas
// included, and maps the resolved codes onto the salary record. Codes
// without a dedicated field accumulate into OtherAllowances; an explicit
// mapping keeps unknown codes a visible catch-all rather than a silent
// drop.
func resolveSalary(org Organization, emp EmployeeInput) (domain.SalaryIncome, error) {
	assigned := make(map[string]decimal.Decimal, len(emp.Components))
	for code, value := range emp.Components {
		assigned[code] = value.Amount()
	}
	formulas := make(map[string]string)
	reference := make(map[string]struct{})
	for _, c := range org.SalaryComponents {
		if c.Reference {
			reference[c.Code] = struct{}{}
		}
		if c.Formula == "" {
			continue
		}
		// Assigned values win over the org formula for the same code.
		if _, ok := assigned[c.Code]; ok {
			continue
		}
		formulas[c.Code] = c.Formula
	}

	resolved, err := formula.ResolveComponents(assigned, formulas)
	if err != nil {
		return domain.SalaryIncome{}, err
	}

	var salary domain.SalaryIncome
	for code, value := range resolved {
		if _, ok := reference[code]; ok {
			continue
		}
		amount, err := money.NewFromDecimal(value)
		if err != nil {
			return domain.SalaryIncome{}, fmt.Errorf("component %s: %w", code, err)
		}
		switch code {
		case "BASIC":
			salary.Basic = amount
		case "DA", "DEARNESS_ALLOWANCE":
			salary.DearnessAllowance = amount
		case "HRA":
			salary.HRAReceived = amount
		case "LTA":
			salary.LTAReceived = amount
		case "SPECIAL", "SPECIAL_ALLOWANCE":
			salary.SpecialAllowance = amount
		case "BONUS":
			salary.Bonus = amount
		case "COMMISSION":
			salary.Commission = amount
		case "EMPLOYER_PF":
			salary.EmployerPF = amount
		case "EMPLOYER_NPS":
			salary.EmployerNPS = amount
		default:
			salary.OtherAllowances = salary.OtherAllowances.Add(amount)
		}
	}
	return salary, nil
}

// regimeOverrides builds validated regimes from the bundle's tables.
func (b *InputBundle) regimeOverrides() (map[regime.Variant]regime.TaxRegime, error) {
	if len(b.RegimeTables) == 0 {
		return nil, nil
	}
	overrides := make(map[regime.Variant]regime.TaxRegime, len(b.RegimeTables))
	for v, tables := range b.RegimeTables {
		reg, err := regime.FromTables(v, tables)
		if err != nil {
			return nil, fmt.Errorf("regime_tables %s: %w", v, err)
		}
		overrides[v] = reg
	}
	return overrides, nil
}

// TaxationInputs converts the bundle into the typed per-employee inputs
// the engine consumes, resolving formula components along the way.
func (b *InputBundle) TaxationInputs() ([]calculation.TaxationInput, error) {
	overrides, err := b.regimeOverrides()
	if err != nil {
		return nil, err
	}
	inputs := make([]calculation.TaxationInput, 0, len(b.Employees))
	for _, emp := range b.Employees {
		reg, ok := overrides[emp.Regime]
		if !ok {
			var err error
			reg, err = regime.ForVariant(emp.Regime)
			if err != nil {
				return nil, fmt.Errorf("employee %s: %w", emp.Profile.EmployeeID, err)
			}
		}
		salary, err := resolveSalary(b.Organization, emp)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.Profile.EmployeeID, err)
		}
		inputs = append(inputs, calculation.TaxationInput{
			EmployeeID:    emp.Profile.EmployeeID,
			FinancialYear: b.Organization.FinancialYear,
			Regime:        reg,
			Profile:       emp.Profile,
			Salary:        salary,
			Perquisites:   emp.Perquisites,
			Deductions:    emp.Declarations,
			OtherIncome:   emp.OtherIncome,
			HouseProperty: emp.HouseProperty,
			CapitalGains:  emp.CapitalGains,
			Retirement:    emp.Retirement,
			Regimes:       overrides,
		})
	}
	return inputs, nil
}

// PayoutRequests pairs each taxation input with the bundle's payout period
// and the employee's attendance.
func (b *InputBundle) PayoutRequests() ([]calculation.PayoutRequest, error) {
	inputs, err := b.TaxationInputs()
	if err != nil {
		return nil, err
	}
	reqs := make([]calculation.PayoutRequest, 0, len(inputs))
	for i, in := range inputs {
		reqs = append(reqs, calculation.PayoutRequest{
			Input:      in,
			Month:      time.Month(b.PayoutMonth),
			Year:       b.PayoutYear,
			Attendance: b.Employees[i].Attendance,
		})
	}
	return reqs, nil
}
