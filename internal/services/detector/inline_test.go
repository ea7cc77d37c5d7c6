package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindInlineCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *InlineCheck
	}{
		{
			name:    "fixed DC",
			content: `<p>Each creature attempts a <a class="inline-check with-repost" data-pf2-check="reflex" data-pf2-dc="21">DC 21 basic Reflex save</a>.</p>`,
			want:    &InlineCheck{SaveType: "reflex", DC: 21},
		},
		{
			name:    "against a statistic",
			content: `<a class="inline-check" data-pf2-check="will" data-against="spell">Will</a>`,
			want:    &InlineCheck{SaveType: "will", Against: "spell"},
		},
		{
			name:    "skips non save checks",
			content: `<a class="inline-check" data-pf2-check="athletics" data-pf2-dc="15">Athletics</a> then <a class="inline-check" data-pf2-check="fortitude" data-pf2-dc="18">Fortitude</a>`,
			want:    &InlineCheck{SaveType: "fortitude", DC: 18},
		},
		{
			name:    "plain link",
			content: `<a class="content-link" data-pf2-check="reflex">Reflex</a>`,
		},
		{
			name:    "no markup",
			content: "Make a Reflex save.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindInlineCheck(tt.content)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	content := `<p>attempts a DC 21 basic <a class="inline-check" data-pf2-check="reflex">Reflex</a>&nbsp;save</p>`

	assert.True(t, ContainsPhrase(content, "basic Reflex save"))
	assert.True(t, ContainsPhrase(content, "BASIC reflex SAVE"))
	assert.False(t, ContainsPhrase(content, "basic Will save"))
	assert.False(t, ContainsPhrase(content, ""))
}
