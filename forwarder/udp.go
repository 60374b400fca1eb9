package forwarder

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/jd3nn1s/imubridge"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"
	"unsafe"
)

var maxPacketSize = int(unsafe.Sizeof(Header{}) + unsafe.Sizeof(Imu{}))

const fwdChanSize = 4

type UDPConfig struct {
	Server string
	Port   int
}

type packet struct {
	header  Header
	payload interface{}
}

// UDPForwarder sends binary snapshot records to a collector. Publish calls
// never block: records queue on a small channel and are dropped when the
// rate limited sender falls behind.
type UDPForwarder struct {
	Config *UDPConfig

	conn    net.Conn
	fwdChan chan packet
}

func NewUDPForwarder(fileName string) (*UDPForwarder, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to determine binary location")
	}
	file, err := os.Open(filepath.Join(dir, fileName))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", fileName)
	}
	return NewUDPForwarderFromReader(file)
}

func NewUDPForwarderFromReader(configReader io.Reader) (*UDPForwarder, error) {
	configData, err := io.ReadAll(configReader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config reader")
	}
	config := UDPConfig{}
	if _, err := toml.Decode(string(configData), &config); err != nil {
		return nil, errors.Wrapf(err, "unable to load udp forwarder configuration")
	}
	udp := &UDPForwarder{
		Config:  &config,
		fwdChan: make(chan packet, fwdChanSize),
	}
	if err = udp.connect(); err != nil {
		return nil, err
	}
	return udp, nil
}

func (udp *UDPForwarder) Close() error {
	return udp.conn.Close()
}

func (udp *UDPForwarder) PublishImu(snap *imubridge.ImuSnapshot) error {
	// copy into a wire record as we're sending on another go-routine
	udp.enqueue(Header{Type: TypeImu}, imuRecord(snap))
	return nil
}

func (udp *UDPForwarder) PublishMagneticField(snap *imubridge.MagneticFieldSnapshot) error {
	udp.enqueue(Header{Type: TypeMagneticField}, magneticFieldRecord(snap))
	return nil
}

func (udp *UDPForwarder) PublishTemperature(snap *imubridge.TemperatureSnapshot) error {
	udp.enqueue(Header{Type: TypeTemperature}, temperatureRecord(snap))
	return nil
}

func (udp *UDPForwarder) PublishFluidPressure(snap *imubridge.FluidPressureSnapshot) error {
	udp.enqueue(Header{Type: TypePressure}, pressureRecord(snap))
	return nil
}

func (udp *UDPForwarder) enqueue(hdr Header, payload interface{}) {
	select {
	case udp.fwdChan <- packet{header: hdr, payload: payload}:
	default:
		// if channel is full, skip
	}
}

func (udp *UDPForwarder) Start(ctx context.Context) error {
	limiter := time.Tick(100 * time.Millisecond)
	for {
		<-limiter
		select {
		case p := <-udp.fwdChan:
			if err := udp.forward(&p); err != nil {
				log.Error("unable to forward snapshot to server ", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (udp *UDPForwarder) forward(p *packet) error {
	buf := bytes.NewBuffer([]byte{})
	if err := binary.Write(buf, binary.LittleEndian, &p.header); err != nil {
		return errors.Wrap(err, "unable to write udp packet header")
	}
	if err := binary.Write(buf, binary.LittleEndian, p.payload); err != nil {
		return errors.Wrap(err, "unable to write snapshot udp packet")
	}
	return binary.Write(udp.conn, binary.LittleEndian, buf.Bytes())
}

func (udp *UDPForwarder) connect() error {
	writeBufSize := maxPacketSize * 2

	conn, err := net.Dial("udp", fmt.Sprintf("%s:%d",
		udp.Config.Server,
		udp.Config.Port))
	if err != nil {
		return err
	}
	udpConn := conn.(*net.UDPConn)
	if err = udpConn.SetWriteBuffer(writeBufSize); err != nil {
		return errors.Wrapf(err, "unable to set OS write buffer to %v", writeBufSize)
	}

	udp.conn = conn
	return nil
}
