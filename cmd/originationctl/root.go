package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/application/usecase"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/infrastructure/adapter"
	"github.com/bibbank/loan-origination/internal/infrastructure/metrics"
	"github.com/bibbank/loan-origination/pkg/money"
	"github.com/bibbank/loan-origination/pkg/observability"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "originationctl",
		Short:        "Evaluate loan origination rules offline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	logger := func(cmd *cobra.Command) *slog.Logger {
		return observability.InitLogger(observability.LogConfig{
			Level:   logLevel,
			Format:  "text",
			Service: "originationctl",
			Output:  cmd.ErrOrStderr(),
		})
	}

	root.AddCommand(newEMICmd(), newEligibilityCmd(logger), newParseIncomeCmd(logger))
	return root
}

type emiOutput struct {
	Principal     decimal.Decimal           `json:"principal"`
	InterestRate  decimal.Decimal           `json:"interest_rate"`
	TenureMonths  int                       `json:"tenure_months"`
	EMI           decimal.Decimal           `json:"emi"`
	TotalPayment  decimal.Decimal           `json:"total_payment"`
	TotalInterest decimal.Decimal           `json:"total_interest"`
	Formatted     string                    `json:"formatted_emi"`
	Schedule      []model.AmortizationEntry `json:"schedule,omitempty"`
}

func newEMICmd() *cobra.Command {
	var (
		amount, rate, start string
		tenure              int
		schedule            bool
	)

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the EMI and optionally the amortization schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			principal, err := decimalFlag("amount", amount)
			if err != nil {
				return err
			}
			annualRate, err := decimalFlag("rate", rate)
			if err != nil {
				return err
			}
			breakdown, err := model.CalculateEMI(principal, annualRate, tenure)
			if err != nil {
				return err
			}
			breakdown = breakdown.Rounded()

			out := emiOutput{
				Principal:     principal,
				InterestRate:  annualRate,
				TenureMonths:  tenure,
				EMI:           breakdown.EMI,
				TotalPayment:  breakdown.TotalPayment,
				TotalInterest: breakdown.TotalInterest,
				Formatted:     money.Rupees(breakdown.EMI).Format(),
			}
			if schedule {
				startDate := time.Now().UTC()
				if start != "" {
					if startDate, err = time.Parse(time.DateOnly, start); err != nil {
						return fmt.Errorf("invalid --start: %w", err)
					}
				}
				if out.Schedule, err = model.GenerateAmortizationSchedule(principal, annualRate, tenure, startDate); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "principal in rupees")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&tenure, "tenure", 36, "tenure in months")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "include the amortization schedule")
	cmd.Flags().StringVar(&start, "start", "", "schedule start date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newEligibilityCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var (
		customerID, amount string
		tenure             int
	)

	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Evaluate a loan request against a seeded customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			requested, err := decimalFlag("amount", amount)
			if err != nil {
				return err
			}
			book := adapter.NewStubCustomerBook()
			uc := usecase.NewEvaluateEligibilityUseCase(book, book, service.NewEligibilityEvaluator(), metrics.Noop{}, logger(cmd))
			resp, err := uc.Execute(cmd.Context(), dto.EvaluateEligibilityRequest{
				CustomerID:   customerID,
				Amount:       requested,
				TenureMonths: tenure,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "customer ID, e.g. CUST001")
	cmd.Flags().StringVar(&amount, "amount", "", "requested amount in rupees")
	cmd.Flags().IntVar(&tenure, "tenure", 36, "tenure in months")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newParseIncomeCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse-income",
		Short: "Extract the monthly income from payslip or statement text",
		Long:  "Reads document text from --file, or from stdin when no file is given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				text []byte
				err  error
			)
			if file != "" {
				text, err = os.ReadFile(file)
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read document text: %w", err)
			}

			uc := usecase.NewParseIncomeUseCase(service.NewIncomeDocumentParser(), metrics.Noop{}, logger(cmd))
			resp, err := uc.Execute(cmd.Context(), dto.ParseIncomeRequest{Text: string(text)})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "text file to parse")
	return cmd
}

func decimalFlag(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
