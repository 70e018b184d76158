// Package session drives one ordering session through the navigation
// state machine.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/lanchonete/internal/domain/catalog"
	"github.com/xenking/lanchonete/internal/domain/order"
	"github.com/xenking/lanchonete/internal/domain/pricing"
	"github.com/xenking/lanchonete/internal/prompt"
	"github.com/xenking/lanchonete/internal/receipt"
)

const instrumentationName = "github.com/xenking/lanchonete/internal/session"

type handler func(ctx context.Context) (State, error)

// Machine owns the order and the current state of one session.
type Machine struct {
	menu     *catalog.Menu
	policy   pricing.Policy
	prompter *prompt.Prompter
	out      io.Writer

	order    *order.Order
	state    State
	handlers map[State]handler

	tracer          trace.Tracer
	itemsAdded      metric.Int64Counter
	ordersCompleted metric.Int64Counter
}

// New creates a Machine in the Welcome state reading from in and writing to out.
func New(
	menu *catalog.Menu,
	policy pricing.Policy,
	in io.Reader,
	out io.Writer,
	opts ...Option,
) (*Machine, error) {
	o := options{
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)
	itemsAdded, err := meter.Int64Counter("lanchonete.items.added",
		metric.WithDescription("Items added to orders"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create items counter")
	}
	ordersCompleted, err := meter.Int64Counter("lanchonete.orders.completed",
		metric.WithDescription("Sessions that reached the order summary"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders counter")
	}

	m := &Machine{
		menu:            menu,
		policy:          policy,
		prompter:        prompt.New(in, out),
		out:             out,
		order:           order.New(),
		state:           Welcome,
		tracer:          o.tracerProvider.Tracer(instrumentationName),
		itemsAdded:      itemsAdded,
		ordersCompleted: ordersCompleted,
	}
	m.handlers = map[State]handler{
		Welcome:      m.welcome,
		MainMenu:     m.mainMenu,
		SnacksMenu:   m.categoryMenu(SnacksMenu),
		DrinksMenu:   m.categoryMenu(DrinksMenu),
		DessertsMenu: m.categoryMenu(DessertsMenu),
		Summary:      m.summary,
		Exit:         func(context.Context) (State, error) { return Exit, nil },
	}
	return m, nil
}

// Order returns the session's order.
func (m *Machine) Order() *order.Order {
	return m.order
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Run executes states until Exit is reached. Cancellation of ctx is honoured
// between transitions; a pending read is not interrupted.
func (m *Machine) Run(ctx context.Context) (rerr error) {
	ctx, span := m.tracer.Start(ctx, "session",
		trace.WithAttributes(attribute.String("order.id", m.order.ID)),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	ctx = zctx.With(ctx, zap.String("order_id", m.order.ID))
	lg := zctx.From(ctx)
	lg.Info("Session started")

	for m.state != Exit {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "session interrupted")
		}

		next, err := m.Step(ctx)
		if err != nil {
			return errors.Wrapf(err, "state %s", m.state)
		}
		lg.Debug("Transition", zap.Stringer("from", m.state), zap.Stringer("to", next))
		m.state = next
	}

	lg.Info("Session finished", zap.Int("items", m.order.Len()))
	return nil
}

// Step executes the current state once and returns the next state without
// applying it.
func (m *Machine) Step(ctx context.Context) (State, error) {
	h, ok := m.handlers[m.state]
	if !ok {
		fmt.Fprintln(m.out, "Estado inválido!")
		return Exit, nil
	}
	return h(ctx)
}

func (m *Machine) welcome(ctx context.Context) (State, error) {
	fmt.Fprintln(m.out, "Bem-vindo à lanchonete!")
	fmt.Fprint(m.out, "Por favor, insira seu nome: ")

	name, err := m.prompter.ReadToken()
	if err != nil {
		return Exit, errors.Wrap(err, "read customer name")
	}
	m.order.CustomerName = name
	zctx.From(ctx).Info("Customer identified", zap.String("customer", name))

	fmt.Fprintf(m.out, "Olá, %s! Vamos começar seu pedido.\n", name)
	return MainMenu, nil
}

func (m *Machine) mainMenu(context.Context) (State, error) {
	labels := make([]string, 0, len(mainMenuTargets))
	for _, c := range catalog.Categories() {
		labels = append(labels, c.String())
	}
	labels = append(labels, "Finalizar pedido")

	choice, err := m.prompter.Choose(labels, "Escolha uma categoria, ou finalize o pedido ", "")
	if err != nil {
		return Exit, errors.Wrap(err, "choose category")
	}
	if choice < 1 || choice > len(mainMenuTargets) {
		fmt.Fprintln(m.out, "Opção inválida. Tente novamente.")
		return MainMenu, nil
	}
	return mainMenuTargets[choice-1], nil
}

// categoryMenu returns the handler for a category state. Picking an item
// keeps the session in the same state so several items can be added.
func (m *Machine) categoryMenu(state State) handler {
	category := categoryStates[state]
	return func(ctx context.Context) (State, error) {
		items := m.menu.Items(category)

		choice, err := m.prompter.ChooseOrBack(items, "Escolha um "+category.Noun()+" ")
		if err != nil {
			return Exit, errors.Wrapf(err, "choose %s", category.Noun())
		}
		if choice == prompt.Back {
			return MainMenu, nil
		}

		item := items[choice-1]
		m.order.Add(item)
		m.itemsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category.String())))
		zctx.From(ctx).Info("Item added",
			zap.String("item", item.Name),
			zap.Int64("price", item.Price),
			zap.Int("items", m.order.Len()),
		)

		fmt.Fprintf(m.out, "%s adicionado ao pedido.\n", item.Name)
		return state, nil
	}
}

func (m *Machine) summary(ctx context.Context) (State, error) {
	s := receipt.Build(m.order, m.policy)
	if err := receipt.Render(m.out, s); err != nil {
		return Exit, errors.Wrap(err, "render receipt")
	}

	m.ordersCompleted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("empty", len(s.Items) == 0)))
	zctx.From(ctx).Info("Order completed",
		zap.Int("items", len(s.Items)),
		zap.Int64("subtotal", s.Subtotal),
		zap.Int64("total", s.Total),
		zap.Bool("discounted", s.Discounted()),
	)
	return Exit, nil
}
