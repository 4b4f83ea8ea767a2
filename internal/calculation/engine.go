package calculation

import (
	"fmt"
	"time"

	"github.com/vetan/payroll-engine/internal/domain"
)

// ComputationEngine orchestrates taxation and payout computations for one
// or many employees. The engine itself is stateless apart from its logger;
// every computation is a pure function of its input bundle.
type ComputationEngine struct {
	Logger Logger
}

// NewComputationEngine returns an engine with no-op logging.
func NewComputationEngine() *ComputationEngine {
	return &ComputationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger.
func (e *ComputationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// ComputeTaxation builds the taxation record for one employee and logs the
// headline figures.
func (e *ComputationEngine) ComputeTaxation(in TaxationInput) (*TaxationRecord, error) {
	record, err := NewTaxationRecord(in)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("taxation %s FY %s regime %s: income=%s taxable=%s liability=%s",
		record.EmployeeID(), record.FinancialYear(), record.Regime().Variant(),
		record.GetTotalIncome(), record.GetTaxableIncome(), record.GetTaxLiability())
	return record, nil
}

// TaxationError records one employee's failure inside a batch.
type TaxationError struct {
	EmployeeID string
	Err        error
}

func (t TaxationError) Error() string {
	return fmt.Sprintf("employee %s: %v", t.EmployeeID, t.Err)
}

// ComputeTaxations runs the batch, recording per-employee failures and
// continuing. Each computation is independent; order is preserved.
func (e *ComputationEngine) ComputeTaxations(inputs []TaxationInput) ([]*TaxationRecord, []TaxationError) {
	records := make([]*TaxationRecord, 0, len(inputs))
	var failures []TaxationError
	for _, in := range inputs {
		record, err := e.ComputeTaxation(in)
		if err != nil {
			e.Logger.Warnf("taxation %s: %v", in.EmployeeID, err)
			failures = append(failures, TaxationError{EmployeeID: in.EmployeeID, Err: err})
			continue
		}
		records = append(records, record)
	}
	return records, failures
}

// PayoutRequest asks for one employee's pay projection for a period. Stored
// carries an already-persisted monthly record when one exists.
type PayoutRequest struct {
	Input      TaxationInput
	Month      time.Month
	Year       int
	Attendance domain.Attendance
	Stored     *MonthlyPayout
}

// PayoutError records one employee's failure inside a payout batch.
type PayoutError struct {
	EmployeeID string
	Err        error
}

func (p PayoutError) Error() string {
	return fmt.Sprintf("employee %s: %v", p.EmployeeID, p.Err)
}

// ComputePayout projects one employee's monthly payout.
func (e *ComputationEngine) ComputePayout(req PayoutRequest) (MonthlyPayout, error) {
	record, err := NewTaxationRecord(req.Input)
	if err != nil {
		return MonthlyPayout{}, err
	}
	payout, err := record.GetMonthlyPayout(req.Month, req.Year, req.Attendance, req.Stored)
	if err != nil {
		return MonthlyPayout{}, err
	}
	e.Logger.Debugf("payout %s %d-%02d: ratio=%s gross=%s net=%s status=%s",
		payout.EmployeeID, payout.Year, int(payout.Month),
		payout.EffectiveRatio, payout.GrossPay, payout.NetPay, payout.Status)
	return payout, nil
}

// ComputePayouts runs the payout batch. One employee's failure is recorded
// and the remainder of the batch continues.
func (e *ComputationEngine) ComputePayouts(reqs []PayoutRequest) ([]MonthlyPayout, []PayoutError) {
	payouts := make([]MonthlyPayout, 0, len(reqs))
	var failures []PayoutError
	for _, req := range reqs {
		payout, err := e.ComputePayout(req)
		if err != nil {
			e.Logger.Warnf("payout %s: %v", req.Input.EmployeeID, err)
			failures = append(failures, PayoutError{EmployeeID: req.Input.EmployeeID, Err: err})
			continue
		}
		payouts = append(payouts, payout)
	}
	return payouts, failures
}
