package entities

// ProfessionCount is the number of people currently associated with a profession.
type ProfessionCount struct {
	Profession string `json:"profession"`
	People     int    `json:"people"`
}

// DatasetSummary describes the size of the dataset and how portrait lookups went.
type DatasetSummary struct {
	People        int                   `json:"people"`
	Associations  int                   `json:"associations"`
	Professions   int                   `json:"professions"`
	ImagesPending int                   `json:"images_pending"`
	ImagesSaved   int                   `json:"images_saved"`
	ImageFailures map[FailureReason]int `json:"image_failures"`
}
