package sitepipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage(t *testing.T) {
	s := StagesAll
	assert.True(t, s.Ok(StagePreBuild, StageHtml, StageJs, StageCss, StageFonts))

	s.Skip(StageJs, StageFonts)
	assert.True(t, s.Ok(StageHtml, StageCss))
	assert.False(t, s.Ok(StageJs))
	assert.False(t, s.Ok(StageHtml, StageFonts))

	assert.Equal(t, "preBuild", StagePreBuild.String())
	assert.Equal(t, "buildHtml", StageHtml.String())
	assert.Equal(t, "buildJs", StageJs.String())
	assert.Equal(t, "buildCss", StageCss.String())
	assert.Equal(t, "buildFonts", StageFonts.String())
	assert.Equal(t, "collect", StageCollect.String())
	assert.Equal(t, "BAD_STAGE", (StageHtml | StageJs).String())
}
