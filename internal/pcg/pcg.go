// Package pcg describes the classes of the French general chart of accounts
// (Plan Comptable Général) that ledger exports are classified against.
package pcg

import "strings"

// Statement tells which financial statement a class belongs to.
type Statement string

const (
	StatementBalanceSheet Statement = "bilan"
	StatementIncome       Statement = "compte de résultat"
)

// Class is one top-level PCG class, identified by the first digit of an
// account number.
type Class struct {
	Digit     byte
	Name      string
	Statement Statement
}

var classes = []Class{
	{Digit: '1', Name: "Comptes de capitaux", Statement: StatementBalanceSheet},
	{Digit: '2', Name: "Comptes d'immobilisations", Statement: StatementBalanceSheet},
	{Digit: '3', Name: "Comptes de stocks et en-cours", Statement: StatementBalanceSheet},
	{Digit: '4', Name: "Comptes de tiers", Statement: StatementBalanceSheet},
	{Digit: '5', Name: "Comptes financiers", Statement: StatementBalanceSheet},
	{Digit: '6', Name: "Comptes de charges", Statement: StatementIncome},
	{Digit: '7', Name: "Comptes de produits", Statement: StatementIncome},
}

// Classes returns the seven classes in digit order.
func Classes() []Class {
	out := make([]Class, len(classes))
	copy(out, classes)
	return out
}

// ClassOf returns the class of an account number. Numbers that do not start
// with 1-7 have no class.
func ClassOf(number string) (Class, bool) {
	if number == "" {
		return Class{}, false
	}
	d := number[0]
	if d < '1' || d > '7' {
		return Class{}, false
	}
	return classes[d-'1'], true
}

// IsValid reports whether number belongs to classes 1 to 7.
func IsValid(number string) bool {
	_, ok := ClassOf(number)
	return ok
}

// IsBalanceSheet reports whether number belongs to classes 1 to 5.
func IsBalanceSheet(number string) bool {
	c, ok := ClassOf(number)
	return ok && c.Statement == StatementBalanceSheet
}

// IsIncomeStatement reports whether number belongs to classes 6 or 7.
func IsIncomeStatement(number string) bool {
	c, ok := ClassOf(number)
	return ok && c.Statement == StatementIncome
}

// IsRevenue reports whether number is a class 7 (produits) account. Revenue
// accounts carry a credit-normal balance.
func IsRevenue(number string) bool {
	return strings.HasPrefix(number, "7")
}
