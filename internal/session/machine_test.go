package session

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/lanchonete/internal/domain/catalog"
	"github.com/xenking/lanchonete/internal/domain/pricing"
	"github.com/xenking/lanchonete/internal/prompt"
)

const (
	mainMenuText = "\n" +
		"1. Lanches\n" +
		"2. Bebidas\n" +
		"3. Sobremesas\n" +
		"4. Finalizar pedido\n" +
		"Escolha uma categoria, ou finalize o pedido (1-4): "
	snacksMenuText = "\n" +
		"1. Hambúrguer - R$10.00\n" +
		"2. Cheeseburguer - R$12.00\n" +
		"3. X-Bacon - R$15.00\n" +
		"4. Voltar\n" +
		"Escolha um lanche (1-4): "
	drinksMenuText = "\n" +
		"1. Refrigerante - R$5.00\n" +
		"2. Suco - R$7.00\n" +
		"3. Água - R$3.00\n" +
		"4. Voltar\n" +
		"Escolha um bebida (1-4): "
	dessertsMenuText = "\n" +
		"1. Sorvete - R$8.00\n" +
		"2. Bolo - R$6.00\n" +
		"3. Pudim - R$5.00\n" +
		"4. Voltar\n" +
		"Escolha um sobremesa (1-4): "
)

func testContext(t *testing.T) context.Context {
	return zctx.Base(context.Background(), zaptest.NewLogger(t))
}

func newMachine(t *testing.T, input string, opts ...Option) (*Machine, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	m, err := New(catalog.Default(), pricing.DefaultPolicy(), strings.NewReader(input), out, opts...)
	require.NoError(t, err)
	return m, out
}

func welcomeText(name string) string {
	return "Bem-vindo à lanchonete!\n" +
		"Por favor, insira seu nome: " +
		"Olá, " + name + "! Vamos começar seu pedido.\n"
}

func TestRun_TwoCategoriesNoDiscount(t *testing.T) {
	// Snacks -> Hambúrguer -> back, Drinks -> Suco -> back, finish.
	m, out := newMachine(t, "Ana\n1\n1\n4\n2\n2\n4\n4\n")

	require.NoError(t, m.Run(testContext(t)))

	want := welcomeText("Ana") +
		mainMenuText +
		snacksMenuText + "Hambúrguer adicionado ao pedido.\n" +
		snacksMenuText +
		mainMenuText +
		drinksMenuText + "Suco adicionado ao pedido.\n" +
		drinksMenuText +
		mainMenuText +
		"\n" +
		"Obrigado pelo seu pedido, Ana!\n" +
		"Resumo do pedido:\n" +
		"- Hambúrguer: R$10.00\n" +
		"- Suco: R$7.00\n" +
		"Subtotal: R$17.00\n" +
		"Total: R$17.00\n" +
		"Volte sempre!\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, Exit, m.State())
	assert.Equal(t, "Ana", m.Order().CustomerName)
	assert.Equal(t, 2, m.Order().Len())
}

func TestRun_RepeatedItemsApplyDiscount(t *testing.T) {
	// Eight juices: 8 * 700 = 5600 >= 5000.
	m, out := newMachine(t, "Bob\n2\n"+strings.Repeat("2\n", 8)+"4\n4\n")

	require.NoError(t, m.Run(testContext(t)))

	got := out.String()
	assert.Equal(t, 8, strings.Count(got, "Suco adicionado ao pedido.\n"))
	assert.Contains(t, got, "Subtotal: R$56.00\n")
	assert.Contains(t, got, "Desconto aplicado! Novo total: R$50.40\n")
	assert.NotContains(t, got, "\nTotal: R$")
	assert.True(t, strings.HasSuffix(got, "Volte sempre!\n"))
}

func TestRun_EmptyOrderFarewell(t *testing.T) {
	m, out := newMachine(t, "Carla\n4\n")

	require.NoError(t, m.Run(testContext(t)))

	want := welcomeText("Carla") +
		mainMenuText +
		"Nenhum item foi pedido. Até logo, Carla!\n"
	assert.Equal(t, want, out.String())
	assert.True(t, m.Order().IsEmpty())
}

func TestRun_AllCategories(t *testing.T) {
	m, out := newMachine(t, "Duda\n1\n3\n4\n2\n3\n4\n3\n1\n2\n4\n4\n")

	require.NoError(t, m.Run(testContext(t)))

	assert.Contains(t, out.String(), dessertsMenuText)
	names := make([]string, 0, m.Order().Len())
	for _, item := range m.Order().Items() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"X-Bacon", "Água", "Sorvete", "Bolo"}, names)
	// 1500 + 300 + 800 + 600 = 3200.
	assert.Contains(t, out.String(), "Total: R$32.00\n")
}

func TestRun_RepromptsOnInvalidChoices(t *testing.T) {
	m, out := newMachine(t, "Eva\nabc\n0\n5\n1\n9\nxyz\n4\n4\n")

	require.NoError(t, m.Run(testContext(t)))

	want := welcomeText("Eva") +
		mainMenuText +
		prompt.MsgInvalidInput + prompt.MsgInvalidOption + prompt.MsgInvalidOption +
		snacksMenuText +
		prompt.MsgInvalidOption + prompt.MsgInvalidInput +
		mainMenuText +
		"Nenhum item foi pedido. Até logo, Eva!\n"
	assert.Equal(t, want, out.String())
}

func TestRun_InputClosed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "before name", input: ""},
		{name: "in main menu", input: "Fabi\n"},
		{name: "in category menu", input: "Fabi\n1\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newMachine(t, tt.input)

			err := m.Run(testContext(t))
			require.ErrorIs(t, err, prompt.ErrInputClosed)
			assert.NotContains(t, out.String(), "Volte sempre!")
			assert.NotEqual(t, Exit, m.State())
		})
	}
}

func TestRun_UnknownStateExits(t *testing.T) {
	m, out := newMachine(t, "")
	m.state = State(42)

	require.NoError(t, m.Run(testContext(t)))
	assert.Equal(t, "Estado inválido!\n", out.String())
	assert.Equal(t, Exit, m.State())
}

func TestRun_CanceledContext(t *testing.T) {
	m, out := newMachine(t, "Gabi\n4\n")
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := m.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestStep(t *testing.T) {
	m, _ := newMachine(t, "Hugo\n3\n2\n")
	ctx := testContext(t)

	next, err := m.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, MainMenu, next)

	m.state = next
	next, err = m.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, DessertsMenu, next)

	m.state = next
	next, err = m.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, DessertsMenu, next, "picking an item stays in the category")
	assert.Equal(t, []catalog.Item{{Name: "Bolo", Price: 600}}, m.Order().Items())

	m.state = Exit
	next, err = m.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, Exit, next)
}

func TestRun_Telemetry(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	m, _ := newMachine(t, "Iris\n1\n1\n2\n4\n4\n",
		WithMeterProvider(mp),
		WithTracerProvider(tp),
	)
	require.NoError(t, m.Run(testContext(t)))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(2), counterValue(t, rm, "lanchonete.items.added"))
	assert.Equal(t, int64(1), counterValue(t, rm, "lanchonete.orders.completed"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "session", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestRun_TelemetryRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	m, _ := newMachine(t, "", WithTracerProvider(tp))
	require.Error(t, m.Run(testContext(t)))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != name {
				continue
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "welcome", Welcome.String())
	assert.Equal(t, "desserts_menu", DessertsMenu.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "unknown", State(42).String())
}
