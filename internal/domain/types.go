package domain

type (
	BoardId int64
	ActorId int64

	// Color is a hex RGB string, e.g. "#FF0000".
	// Format validation happens at the API boundary.
	Color = string
)
