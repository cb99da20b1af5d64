// Package registry serves the flat inventory records through one data-driven table of
// module definitions instead of a handler per record kind.
package registry

import "strings"

const ListLimit = 500

// Module describes one record kind: its table, the columns a caller may set, the
// subset that must be non-empty, and per-column defaults and allowed values.
type Module struct {
	Key      string              `json:"key"`
	Title    string              `json:"title"`
	Table    string              `json:"-"`
	Fields   []string            `json:"fields"`
	Columns  []string            `json:"columns"`
	Required []string            `json:"required"`
	Defaults map[string]string   `json:"defaults,omitempty"`
	Choices  map[string][]string `json:"choices,omitempty"`
}

// Row is one stored record keyed by column name.
type Row map[string]interface{}

var modules = []Module{
	{
		Key:   "equipamentos",
		Title: "Equipamentos",
		Table: "equipments",
		Fields: []string{"id_interno", "patrimonio", "selo_patrimonio", "equipamento", "modelo", "marca",
			"serie", "mem", "processador", "geracao", "hd", "mod_hd"},
		Columns:  []string{"equipamento", "modelo", "marca", "patrimonio"},
		Required: []string{"equipamento"},
	},
	{
		Key:      "ips",
		Title:    "IPs",
		Table:    "ips",
		Fields:   []string{"ip", "nome", "fabricante", "endereco_mac"},
		Columns:  []string{"ip", "nome", "fabricante", "endereco_mac"},
		Required: []string{"ip"},
	},
	{
		Key:      "emails",
		Title:    "Emails",
		Table:    "emails",
		Fields:   []string{"nro", "nome", "sobrenome", "email", "grupo", "situacao"},
		Columns:  []string{"nro", "nome", "sobrenome", "email", "grupo", "situacao"},
		Required: []string{"email"},
	},
	{
		Key:     "ramais",
		Title:   "Ramais",
		Table:   "ramais",
		Fields:  []string{"nro", "nome", "sobrenome", "email", "grupo", "situacao"},
		Columns: []string{"nro", "nome", "sobrenome", "email", "grupo", "situacao"},
	},
	{
		Key:      "softwares",
		Title:    "Softwares",
		Table:    "softwares",
		Fields:   []string{"nome", "computador", "setor", "serial", "conta"},
		Columns:  []string{"nome", "computador", "setor", "serial", "conta"},
		Required: []string{"nome"},
	},
	{
		Key:      "insumos",
		Title:    "Insumos",
		Table:    "insumos",
		Fields:   []string{"insumo", "data", "qtd", "nome", "departamento"},
		Columns:  []string{"insumo", "data", "qtd", "nome", "departamento"},
		Required: []string{"insumo"},
	},
	{
		Key:   "requisicoes",
		Title: "Requisicoes",
		Table: "requisicoes",
		Fields: []string{"solicitacao", "qtd", "valor", "total", "requisitado", "aprovado", "recebido",
			"nf", "tipo", "fornecedor", "link"},
		Columns:  []string{"solicitacao", "qtd", "valor", "total", "aprovado", "fornecedor"},
		Required: []string{"solicitacao"},
		Defaults: map[string]string{"aprovado": "esperando"},
		Choices:  map[string][]string{"aprovado": {"sim", "nao", "esperando"}},
	},
	{
		Key:      "emprestimos",
		Title:    "Emprestimos",
		Table:    "emprestimos",
		Fields:   []string{"nome", "equipamento", "documento", "arquivo", "situacao", "data"},
		Columns:  []string{"nome", "equipamento", "documento", "situacao", "data"},
		Required: []string{"nome"},
	},
}

var moduleIndex = func() map[string]*Module {
	idx := make(map[string]*Module, len(modules))
	for i := range modules {
		idx[modules[i].Key] = &modules[i]
	}
	return idx
}()

// Modules returns the definitions in menu order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// Lookup finds a module by key, ignoring case and surrounding whitespace.
func Lookup(key string) (*Module, bool) {
	m, ok := moduleIndex[strings.ToLower(strings.TrimSpace(key))]
	return m, ok
}

func (m *Module) HasField(name string) bool {
	for _, f := range m.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// SelectColumns is the id followed by every field, in declaration order.
func (m *Module) SelectColumns() []string {
	return append([]string{"id"}, m.Fields...)
}
