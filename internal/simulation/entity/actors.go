package entity

// Starting balances for newly constructed actors.
const (
	DefaultCitizenMoney        int64 = 1000
	DefaultCompanyCapital      int64 = 10000
	DefaultBankCapital         int64 = 100000
	DefaultGovernmentTreasury  int64 = 1000000
	DefaultUtilityProviderFund int64 = 50000
)

type Citizen struct {
	Name  string
	Money int64
}

type Company struct {
	Name    string
	Capital int64
	// Inventory maps item name to quantity. No rule touches it yet.
	Inventory map[string]int64
}

type Bank struct {
	Name    string
	Capital int64
}

type Government struct {
	Name     string
	Treasury int64
}

type UtilityProvider struct {
	Name    string
	Capital int64
}

func NewCitizen(name string) Citizen {
	return Citizen{Name: name, Money: DefaultCitizenMoney}
}

func NewCompany(name string) Company {
	return Company{Name: name, Capital: DefaultCompanyCapital, Inventory: map[string]int64{}}
}

func NewBank(name string) Bank {
	return Bank{Name: name, Capital: DefaultBankCapital}
}

func NewGovernment(name string) Government {
	return Government{Name: name, Treasury: DefaultGovernmentTreasury}
}

func NewUtilityProvider(name string) UtilityProvider {
	return UtilityProvider{Name: name, Capital: DefaultUtilityProviderFund}
}
