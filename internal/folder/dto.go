package folder

type AddFolderDTO struct {
	Name string `json:"name"`
}

type RemoveFoldersDTO struct {
	Names []string `json:"names"`
}

type FoldersResponse struct {
	Folders []*Folder `json:"folders"`
}

type SeedResponse struct {
	Inserted int `json:"inserted"`
}
