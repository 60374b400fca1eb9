package forwarder

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"github.com/jd3nn1s/imubridge"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"log"
	"net"
	"testing"
	"time"
)

func listenAndForward(t *testing.T, publish func(udp *UDPForwarder)) []byte {
	pc, err := net.ListenPacket("udp", "localhost:0")
	if err != nil {
		log.Fatal(err)
	}
	defer pc.Close()
	udpAddr := pc.LocalAddr().(*net.UDPAddr)
	config := fmt.Sprintf(`
Server = "127.0.0.1"
Port = %d
`, udpAddr.Port)

	recvData := struct {
		data []byte
		len  int
	}{}

	dataChan := make(chan struct{}, 1)
	go func() {
		buffer := make([]byte, 1024)
		assert.NoError(t, pc.SetReadDeadline(time.Now().Add(time.Second*3)))
		n, _, err := pc.ReadFrom(buffer)
		assert.NoError(t, err)
		recvData.data = buffer
		recvData.len = n
		dataChan <- struct{}{}
	}()

	udp, err := NewUDPForwarderFromReader(bytes.NewBufferString(config))
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = udp.Start(ctx)
	}()

	publish(udp)

	<-dataChan
	return recvData.data[:recvData.len]
}

func TestUDPForwarderImu(t *testing.T) {
	snap := imubridge.ImuSnapshot{
		FrameID:                      "base_link",
		Stamp:                        time.Unix(1500000000, 123),
		Orientation:                  quat.Number{Real: 1},
		AngularVelocity:              r3.Vec{X: 1, Y: -2, Z: -3},
		LinearAcceleration:           r3.Vec{X: 0.5, Z: -9.80665},
		OrientationCovariance:        imubridge.Covariance3{1, 0, 0, 0, 1, 0, 0, 0, 1},
		AngularVelocityCovariance:    imubridge.Covariance3{2},
		LinearAccelerationCovariance: imubridge.Covariance3{3},
	}

	data := listenAndForward(t, func(udp *UDPForwarder) {
		assert.NoError(t, udp.PublishImu(&snap))
	})
	assert.Equal(t, 307, len(data))

	hdr := Header{}
	rec := Imu{}
	rdr := bytes.NewReader(data)
	assert.NoError(t, binary.Read(rdr, binary.LittleEndian, &hdr))
	assert.NoError(t, binary.Read(rdr, binary.LittleEndian, &rec))
	assert.Equal(t, Header{Type: TypeImu}, hdr)
	assert.Equal(t, imuRecord(&snap), rec)
	assert.Equal(t, uint8(1), rec.HasOrientation)
	assert.Equal(t, FrameEnuBaselink, rec.Frame)
	assert.Equal(t, snap.Stamp.UnixNano(), rec.StampNs)
}

func TestUDPForwarderPressure(t *testing.T) {
	snap := imubridge.FluidPressureSnapshot{
		FrameID:  "base_link",
		Stamp:    time.Unix(1500000000, 0),
		Pressure: 101325,
	}

	data := listenAndForward(t, func(udp *UDPForwarder) {
		assert.NoError(t, udp.PublishFluidPressure(&snap))
	})
	assert.Equal(t, 18, len(data))

	hdr := Header{}
	rec := Pressure{}
	rdr := bytes.NewReader(data)
	assert.NoError(t, binary.Read(rdr, binary.LittleEndian, &hdr))
	assert.NoError(t, binary.Read(rdr, binary.LittleEndian, &rec))
	assert.Equal(t, Header{Type: TypePressure}, hdr)
	assert.Equal(t, 101325.0, rec.Pressure)
}

func TestUDPForwarderDropsWhenBusy(t *testing.T) {
	pc, err := net.ListenPacket("udp", "localhost:0")
	assert.NoError(t, err)
	defer pc.Close()
	udpAddr := pc.LocalAddr().(*net.UDPAddr)
	config := fmt.Sprintf("Server = \"127.0.0.1\"\nPort = %d\n", udpAddr.Port)

	udp, err := NewUDPForwarderFromReader(bytes.NewBufferString(config))
	assert.NoError(t, err)

	// no Start goroutine draining: publishes beyond the queue are dropped
	snap := imubridge.ImuSnapshot{}
	for n := 0; n < fwdChanSize*3; n++ {
		assert.NoError(t, udp.PublishImu(&snap))
	}
	assert.Equal(t, fwdChanSize, len(udp.fwdChan))
}
