package entity

// SnapshotVersion identifies the field set below. Bump it when a view
// gains or loses a field.
const SnapshotVersion = 1

// Snapshot is the read-only view served to clients. Keys are part of the
// public contract.
type Snapshot struct {
	Turn             int64                 `json:"turno"`
	Citizens         []CitizenView         `json:"cittadini"`
	Companies        []CompanyView         `json:"aziende"`
	Banks            []BankView            `json:"banche"`
	Government       GovernmentView        `json:"governo"`
	UtilityProviders []UtilityProviderView `json:"fornitori_utenze"`
}

type CitizenView struct {
	Name  string `json:"nome"`
	Money int64  `json:"denaro"`
}

type CompanyView struct {
	Name      string           `json:"nome"`
	Capital   int64            `json:"capitale"`
	Inventory map[string]int64 `json:"inventario"`
}

type BankView struct {
	Name    string `json:"nome"`
	Capital int64  `json:"capitale"`
}

type GovernmentView struct {
	Name     string `json:"nome"`
	Treasury int64  `json:"tesoro"`
}

type UtilityProviderView struct {
	Name    string `json:"nome"`
	Capital int64  `json:"capitale"`
}

// Snapshot copies the state; the result shares no memory with s.
func (s *Simulation) Snapshot() Snapshot {
	out := Snapshot{
		Turn:             s.Turn,
		Citizens:         make([]CitizenView, 0, len(s.Citizens)),
		Companies:        make([]CompanyView, 0, len(s.Companies)),
		Banks:            make([]BankView, 0, len(s.Banks)),
		Government:       s.Government.toView(),
		UtilityProviders: make([]UtilityProviderView, 0, len(s.UtilityProviders)),
	}
	for _, c := range s.Citizens {
		out.Citizens = append(out.Citizens, c.toView())
	}
	for _, c := range s.Companies {
		out.Companies = append(out.Companies, c.toView())
	}
	for _, b := range s.Banks {
		out.Banks = append(out.Banks, b.toView())
	}
	for _, p := range s.UtilityProviders {
		out.UtilityProviders = append(out.UtilityProviders, p.toView())
	}
	return out
}

func (c Citizen) toView() CitizenView {
	return CitizenView{Name: c.Name, Money: c.Money}
}

func (c Company) toView() CompanyView {
	inv := make(map[string]int64, len(c.Inventory))
	for k, v := range c.Inventory {
		inv[k] = v
	}
	return CompanyView{Name: c.Name, Capital: c.Capital, Inventory: inv}
}

func (b Bank) toView() BankView {
	return BankView{Name: b.Name, Capital: b.Capital}
}

func (g Government) toView() GovernmentView {
	return GovernmentView{Name: g.Name, Treasury: g.Treasury}
}

func (p UtilityProvider) toView() UtilityProviderView {
	return UtilityProviderView{Name: p.Name, Capital: p.Capital}
}
