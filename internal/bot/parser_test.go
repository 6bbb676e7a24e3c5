package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser("!")

	cmd, args, ok := p.ParseCommand("!blacklist add spam eggs")
	assert.True(t, ok)
	assert.Equal(t, "blacklist", cmd)
	assert.Equal(t, []string{"add", "spam", "eggs"}, args)
}

func TestParseCommandLowersName(t *testing.T) {
	p := NewCommandParser("!")

	cmd, _, ok := p.ParseCommand("  !HELLO  ")
	assert.True(t, ok)
	assert.Equal(t, "hello", cmd)
}

func TestParseCommandWithoutPrefix(t *testing.T) {
	p := NewCommandParser("!")

	_, _, ok := p.ParseCommand("just chatting")
	assert.False(t, ok)
}

func TestParseCommandBarePrefix(t *testing.T) {
	p := NewCommandParser("!")

	_, _, ok := p.ParseCommand("!")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("!   ")
	assert.False(t, ok)
}

func TestParseCommandCustomPrefix(t *testing.T) {
	p := NewCommandParser("??")

	cmd, args, ok := p.ParseCommand("??kick alice")
	assert.True(t, ok)
	assert.Equal(t, "kick", cmd)
	assert.Equal(t, []string{"alice"}, args)

	_, _, ok = p.ParseCommand("!kick alice")
	assert.False(t, ok)
}
