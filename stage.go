package sitepipe

type Stage int

const (
	StageCollect Stage = -1

	// These stages can be skipped
	StagePreBuild Stage = 1 << iota
	StageHtml
	StageJs
	StageCss
	StageFonts

	StagesAll = StagePreBuild | StageHtml | StageJs | StageCss | StageFonts
)

func (s *Stage) Skip(targets ...Stage) {
	copied := *s
	for i := range targets {
		copied &^= targets[i]
	}

	*s = copied
}

func (s Stage) Ok(targets ...Stage) bool {
	for i := range targets {
		if s&targets[i] == 0 {
			return false
		}
	}

	return true
}

func (s Stage) String() string {
	switch s {
	case StageCollect:
		return "collect"

	case StagePreBuild:
		return "preBuild"

	case StageHtml:
		return "buildHtml"

	case StageJs:
		return "buildJs"

	case StageCss:
		return "buildCss"

	case StageFonts:
		return "buildFonts"
	}

	return "BAD_STAGE"
}
