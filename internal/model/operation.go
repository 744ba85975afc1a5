package model

// Operation names a backend call. The name doubles as the URL path segment.
type Operation string

const (
	OpOpenSession        Operation = "openSession"
	OpSetNick            Operation = "setNick"
	OpStartTournament    Operation = "startTournament"
	OpEndTournament      Operation = "endTournament"
	OpDeleteLeaderboards Operation = "deleteLeaderboards"
	OpRefreshPlayer      Operation = "refreshPlayer"
	OpCloseSession       Operation = "closeSession"
	OpDeletePlayer       Operation = "deletePlayer"
)

// Operations lists every backend call in a stable order
var Operations = []Operation{
	OpOpenSession,
	OpSetNick,
	OpStartTournament,
	OpEndTournament,
	OpDeleteLeaderboards,
	OpRefreshPlayer,
	OpCloseSession,
	OpDeletePlayer,
}

// Params are the named request parameters for an operation
type Params map[string]any

// Request parameter names
const (
	ParamName         = "name"
	ParamPlatform     = "platform"
	ParamVersion      = "version"
	ParamRegion       = "region"
	ParamPlayerID     = "player-id"
	ParamSessionID    = "session-id"
	ParamNickname     = "nickname"
	ParamTournamentID = "tournament-id"
)

// Response data field names
const (
	FieldPlayerID  = "player-id"
	FieldSessionID = "session-id"
	FieldNickname  = "nickname"
	FieldToken     = "token"
)

// RequiredParams lists the parameters each operation cannot do without
var RequiredParams = map[Operation][]string{
	OpOpenSession:        {ParamName, ParamPlatform, ParamVersion, ParamRegion},
	OpSetNick:            {ParamPlayerID, ParamNickname},
	OpStartTournament:    {ParamPlayerID, ParamSessionID, ParamTournamentID},
	OpEndTournament:      {ParamTournamentID},
	OpDeleteLeaderboards: {},
	OpRefreshPlayer:      {ParamPlayerID},
	OpCloseSession:       {ParamSessionID},
	OpDeletePlayer:       {ParamPlayerID},
}

// Missing returns the required parameters absent from p
func (p Params) Missing(op Operation) []string {
	var missing []string
	for _, name := range RequiredParams[op] {
		if v, ok := p[name]; !ok || v == nil || v == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
