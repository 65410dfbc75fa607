package dialect_test

import (
	"testing"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVersion(t *testing.T) {
	s, err := dialect.ForVersion(2)
	require.NoError(t, err)
	assert.Equal(t, "flat-record", s.Name())
	assert.Equal(t, 2, s.Version())

	s, err = dialect.ForVersion(3)
	require.NoError(t, err)
	assert.Equal(t, "builder", s.Name())
	assert.Equal(t, "main.go", s.BootstrapFile())

	_, err = dialect.ForVersion(4)
	assert.Error(t, err)
}

func TestBuilderRequest(t *testing.T) {
	tests := []struct {
		intent dialect.Intent
		class  anchor.Class
		text   string
	}{
		{dialect.AfterConstruct, anchor.AfterConstructorCall, "x := 1"},
		{dialect.BeforeRun, anchor.BeforeRunCall, "x := 1"},
		{dialect.RegisterService, anchor.AppendToLiteralList, "application.NewService(x := 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			req, err := dialect.Builder{}.Request(tt.intent, "x := 1")
			require.NoError(t, err)
			assert.Equal(t, tt.class, req.Class)
			assert.Equal(t, tt.text, req.Text)
			assert.Equal(t, "main.go", req.Path)
		})
	}
}

func TestFlatRecordRequest(t *testing.T) {
	req, err := dialect.FlatRecord{}.Request(dialect.BeforeRun, "x := 1")
	require.NoError(t, err)
	assert.Equal(t, anchor.BeforeRunCall, req.Class)

	for _, intent := range []dialect.Intent{dialect.AfterConstruct, dialect.RegisterService} {
		_, err := dialect.FlatRecord{}.Request(intent, "x := 1")
		assert.ErrorIs(t, err, dialect.ErrUnsupported, intent.String())
	}
}

func TestBuilderResolve(t *testing.T) {
	src := `func main() {
	app := application.New(application.Options{
		Services: []application.Service{
			application.NewService(&A{}),
		},
		Windows: f(g(1), h{2}),
	})
	err := app.Run()
}`

	t.Run("services list contents", func(t *testing.T) {
		res, err := dialect.Builder{}.Resolve(src, anchor.Request{Class: anchor.AppendToLiteralList})
		require.NoError(t, err)
		assert.Equal(t, "application.NewService(&A{}),", res.Contents)
		assert.False(t, res.Empty())
	})

	t.Run("after constructor", func(t *testing.T) {
		res, err := dialect.Builder{}.Resolve(src, anchor.Request{Class: anchor.AfterConstructorCall})
		require.NoError(t, err)
		assert.Equal(t, "\n\terr := app.Run()\n}", src[res.Offset:])
	})

	t.Run("before run", func(t *testing.T) {
		res, err := dialect.Builder{}.Resolve(src, anchor.Request{Class: anchor.BeforeRunCall})
		require.NoError(t, err)
		assert.Equal(t, "err := app.Run()\n}", src[res.Offset:])
	})

	t.Run("run inside if header is not a statement anchor", func(t *testing.T) {
		inline := "func main() {\n\tapp := application.New(application.Options{})\n\tif err := app.Run(); err != nil {\n\t\tlog.Fatal(err)\n\t}\n}"
		_, err := dialect.Builder{}.Resolve(inline, anchor.Request{Class: anchor.BeforeRunCall})
		assert.ErrorIs(t, err, anchor.ErrNotFound)
	})

	t.Run("services list outside constructor is ignored", func(t *testing.T) {
		other := "var s = Services: []application.Service{}\n" + "app := application.New(application.Options{})"
		_, err := dialect.Builder{}.Resolve(other, anchor.Request{Class: anchor.AppendToLiteralList})
		assert.ErrorIs(t, err, anchor.ErrNotFound)
	})
}

func TestFlatRecordResolve(t *testing.T) {
	src := "\tapp := NewApp()\n\terr = wails.Run(&options.App{Bind: []interface{}{app}})\n"

	res, err := dialect.FlatRecord{}.Resolve(src, anchor.Request{Class: anchor.BeforeRunCall})
	require.NoError(t, err)
	assert.Equal(t, "err = wails.Run(", src[res.Offset:res.Offset+len("err = wails.Run(")])

	_, err = dialect.FlatRecord{}.Resolve(src, anchor.Request{Class: anchor.AfterConstructorCall})
	assert.ErrorIs(t, err, dialect.ErrUnsupported)

	_, err = dialect.FlatRecord{}.Resolve("\tif err := wails.Run(&options.App{}); err != nil {\n\t}\n",
		anchor.Request{Class: anchor.BeforeRunCall})
	assert.ErrorIs(t, err, anchor.ErrNotFound)
}
