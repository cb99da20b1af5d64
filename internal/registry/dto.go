package registry

type ModulesResponse struct {
	Modules []Module `json:"modules"`
}

type RecordsResponse struct {
	Module  *Module `json:"module"`
	Records []Row   `json:"records"`
}
