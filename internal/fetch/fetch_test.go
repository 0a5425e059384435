package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const essayPage = `<html><head><title>Sample</title></head><body>
<nav>Home | Essays | About</nav>
<div class="essay-content">
<p>My father taught me carpentry in our garage.</p>
<p>Those evenings shaped how I approach every problem.</p>
</div>
<div class="cta">Sign up for our newsletter!</div>
<footer>Copyright</footer>
</body></html>`

func TestURLFetchesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(essayPage))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "carpentry")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURLInvalid(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "not-a-url", fetchErr.URL)
}

func TestURLServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}

func TestExtractMainTextUsesEssaySelectors(t *testing.T) {
	text, err := ExtractMainText(essayPage, EssayPageSelectors(), EssayPageNoiseSelectors()...)
	require.NoError(t, err)

	assert.Contains(t, text, "carpentry")
	assert.Contains(t, text, "every problem")
	assert.NotContains(t, text, "newsletter")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Home | Essays")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain page with no wrapper.</p></body></html>`
	text, err := ExtractMainText(html, EssayPageSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Plain page with no wrapper.", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser("   "))

	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}

func TestCleanWhitespace(t *testing.T) {
	in := "  first   line \n\n  second\tline  \n"
	assert.Equal(t, "first line\nsecond line", cleanWhitespace(in))
}
