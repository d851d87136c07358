package kafka

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
)

// MockWriterInterface мок для WriterInterface
type MockWriterInterface struct {
	ctrl     *gomock.Controller
	recorder *MockWriterInterfaceMockRecorder
}

func NewMockWriterInterface(ctrl *gomock.Controller) *MockWriterInterface {
	mock := &MockWriterInterface{ctrl: ctrl}
	mock.recorder = &MockWriterInterfaceMockRecorder{mock}
	return mock
}

func (m *MockWriterInterface) EXPECT() *MockWriterInterfaceMockRecorder {
	return m.recorder
}

func (m *MockWriterInterface) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx}
	for _, msg := range msgs {
		varargs = append(varargs, msg)
	}
	ret := m.ctrl.Call(m, "WriteMessages", varargs...)
	ret0, _ := ret[0].(error)
	return ret0
}

func (m *MockWriterInterface) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

type MockWriterInterfaceMockRecorder struct {
	mock *MockWriterInterface
}

func (mr *MockWriterInterfaceMockRecorder) WriteMessages(ctx interface{}, msgs ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx}, msgs...)
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"WriteMessages",
		reflect.TypeOf((*MockWriterInterface)(nil).WriteMessages),
		varargs...,
	)
}

func (mr *MockWriterInterfaceMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Close",
		reflect.TypeOf((*MockWriterInterface)(nil).Close),
	)
}

// MockEventProducer мок для EventProducer
type MockEventProducer struct {
	ctrl     *gomock.Controller
	recorder *MockEventProducerMockRecorder
}

func NewMockEventProducer(ctrl *gomock.Controller) *MockEventProducer {
	mock := &MockEventProducer{ctrl: ctrl}
	mock.recorder = &MockEventProducerMockRecorder{mock}
	return mock
}

func (m *MockEventProducer) EXPECT() *MockEventProducerMockRecorder {
	return m.recorder
}

func (m *MockEventProducer) SendEvent(ctx context.Context, event Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendEvent", ctx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

func (m *MockEventProducer) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

type MockEventProducerMockRecorder struct {
	mock *MockEventProducer
}

func (mr *MockEventProducerMockRecorder) SendEvent(ctx, event interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"SendEvent",
		reflect.TypeOf((*MockEventProducer)(nil).SendEvent),
		ctx,
		event,
	)
}

func (mr *MockEventProducerMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Close",
		reflect.TypeOf((*MockEventProducer)(nil).Close),
	)
}
