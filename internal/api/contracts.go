package api

import "github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type GeneratePlansRequest struct {
	MatrixSetDefinitions []models.MatrixSetDefinition `json:"matrix_set_definitions"`
	FeatureDictionaries  []models.FeatureDictionary   `json:"feature_dictionaries"`
	// Optional full profile override; when absent the deployed profile is
	// used.
	Profile  *models.PlannerProfile `json:"profile,omitempty"`
	Dispatch bool                   `json:"dispatch,omitempty"`
}

type GeneratePlansResponse struct {
	Definitions     []models.MatrixSetDefinition `json:"definitions"`
	BuildTasks      map[string]models.BuildTask  `json:"build_tasks"`
	DefinitionCount int                          `json:"definition_count"`
	BuildTaskCount  int                          `json:"build_task_count"`
}
