package folder

import folderDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/folder"

// DefaultFolders is the network share list seeded into an empty table.
var DefaultFolders = []string{
	"Comun",
	"Almoxarifado",
	"Contabil",
	"Comercial",
	"Compras",
	"Contratos",
	"Financeiro",
	"Fiscal",
	"Eventos",
	"Gerencia",
	"Manutencao",
	"Obras",
	"Obras PCP",
	"Orcamentos",
	"Planejamento",
	"Qualidade",
	"Producao",
	"Projetos",
	"Projetos PCP",
	"RH",
	"Romaneios",
	"SAC",
	"Seguranca Trabalho",
	"Terceiros",
	"TI",
}

type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(f *folderDatamodel.AccessFolder) *Folder {
	return &Folder{ID: f.ID, Name: f.Name}
}
